package treefs

import "github.com/rs/zerolog"

// Logging reports every call to the wrapped adapter and its outcome.
// It never changes results or errors.
type Logging struct {
	inner  Adapter
	logger zerolog.Logger
}

func NewLogging(inner Adapter, logger zerolog.Logger) *Logging {
	return &Logging{inner: inner, logger: logger}
}

func (l *Logging) Add(f File) error {
	err := l.inner.Add(f)
	_, dir := f.(*Directory)
	l.done(err).Str("op", "add").Str("name", f.Name().String()).Bool("dir", dir).Msg("add")
	return err
}

func (l *Logging) Get(name Name) (File, bool) {
	f, ok := l.inner.Get(name)
	l.logger.Debug().Str("op", "get").Str("name", name.String()).Bool("found", ok).Msg("get")
	return f, ok
}

func (l *Logging) Contains(name Name) bool {
	ok := l.inner.Contains(name)
	l.logger.Debug().Str("op", "contains").Str("name", name.String()).Bool("found", ok).Msg("contains")
	return ok
}

func (l *Logging) Remove(name Name) error {
	err := l.inner.Remove(name)
	l.done(err).Str("op", "remove").Str("name", name.String()).Msg("remove")
	return err
}

func (l *Logging) All() ([]File, error) {
	files, err := l.inner.All()
	l.done(err).Str("op", "all").Int("count", len(files)).Msg("all")
	return files, err
}

func (l *Logging) Persist() error {
	err := Persist(l.inner)
	l.done(err).Str("op", "persist").Msg("persist")
	return err
}

func (l *Logging) done(err error) *zerolog.Event {
	if err != nil {
		return l.logger.Error().Err(err)
	}
	return l.logger.Debug()
}
