// SPDX-License-Identifier: MIT

package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Level is the severity of a Diagnostic.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// String returns the lowercase level name.
func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("Level(%d)", int(l))
	}

	return levelNames[l]
}

// slogLevel maps l onto the matching slog level.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Code identifies the kind of a Diagnostic.
type Code string

const (
	// CodeObservationExcluded: an observation failed ingestion.
	CodeObservationExcluded Code = "observation.excluded"
	// CodeDuplicateID: an observation reused an identity already seen.
	CodeDuplicateID Code = "observation.duplicate_id"
	// CodePairReindexed: a pair was related only through a basis change.
	CodePairReindexed Code = "pair.reindexed"
	// CodePairUnrelated: a pair was neither similar nor reindexable.
	CodePairUnrelated Code = "pair.unrelated"
	// CodeAtypicalSetting: an I-centred monoclinic setting was kept.
	CodeAtypicalSetting Code = "symmetry.atypical_setting"
	// CodeSettingSkipped: a subgroup produced no conventional setting.
	CodeSettingSkipped Code = "symmetry.setting_skipped"
	// CodeUnknownSymmetry: a member's point group is not among the candidates.
	CodeUnknownSymmetry Code = "symmetry.unmatched_member"
	// CodeGroupFailed: averaging or exploration failed for one group.
	CodeGroupFailed Code = "group.failed"
)

// Diagnostic is one non-fatal event.
type Diagnostic struct {
	Level Level
	Code  Code
	// Subject names what the diagnostic is about: an observation ID,
	// a pair "a~b" or a group index.
	Subject string
	Message string
}

// String renders "warn observation.excluded [obs-3]: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s [%s]: %s", d.Level, d.Code, d.Subject, d.Message)
}

// Sink receives diagnostics. Implementations must be safe for concurrent use.
type Sink interface {
	Emit(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

// Emit calls f(d).
func (f SinkFunc) Emit(d Diagnostic) { f(d) }

type discard struct{}

func (discard) Emit(Diagnostic) {}

// Discard returns a Sink that drops everything.
func Discard() Sink { return discard{} }

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard()
	}

	return s
}

type loggerSink struct {
	l *slog.Logger
}

// FromLogger returns a Sink writing each diagnostic as one structured
// record with "code" and "subject" attributes. A nil logger uses
// slog.Default().
func FromLogger(l *slog.Logger) Sink {
	if l == nil {
		l = slog.Default()
	}

	return loggerSink{l: l}
}

func (s loggerSink) Emit(d Diagnostic) {
	s.l.LogAttrs(context.Background(), d.Level.slogLevel(), d.Message,
		slog.String("code", string(d.Code)),
		slog.String("subject", d.Subject),
	)
}

// Recorder is an in-memory Sink. The zero value is ready to use.
type Recorder struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Emit appends d.
func (r *Recorder) Emit(d Diagnostic) {
	r.mu.Lock()
	r.diags = append(r.diags, d)
	r.mu.Unlock()
}

// Diagnostics returns a copy of everything recorded, in emission order.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Diagnostic(nil), r.diags...)
}

// ByCode returns the recorded diagnostics carrying code.
func (r *Recorder) ByCode(code Code) []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Diagnostic
	for _, d := range r.diags {
		if d.Code == code {
			out = append(out, d)
		}
	}

	return out
}

// Len returns the number of recorded diagnostics.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.diags)
}

type tee []Sink

func (t tee) Emit(d Diagnostic) {
	for _, s := range t {
		s.Emit(d)
	}
}

// Tee returns a Sink emitting to every non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	var t tee
	for _, s := range sinks {
		if s != nil {
			t = append(t, s)
		}
	}

	return t
}

// Warnf emits a warning built with fmt.Sprintf.
func Warnf(s Sink, code Code, subject, format string, args ...any) {
	OrDiscard(s).Emit(Diagnostic{Level: LevelWarn, Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Infof emits an info diagnostic built with fmt.Sprintf.
func Infof(s Sink, code Code, subject, format string, args ...any) {
	OrDiscard(s).Emit(Diagnostic{Level: LevelInfo, Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Debugf emits a debug diagnostic built with fmt.Sprintf.
func Debugf(s Sink, code Code, subject, format string, args ...any) {
	OrDiscard(s).Emit(Diagnostic{Level: LevelDebug, Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

type scoped struct {
	s      Sink
	prefix string
}

func (s scoped) Emit(d Diagnostic) {
	if d.Subject == "" {
		d.Subject = s.prefix
	} else {
		d.Subject = s.prefix + "/" + d.Subject
	}
	s.s.Emit(d)
}

// WithSubject returns a Sink that prefixes every subject with prefix,
// e.g. "group-2/P422".
func WithSubject(s Sink, prefix string) Sink {
	return scoped{s: OrDiscard(s), prefix: prefix}
}
