package logging

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/ssgreg/journald"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/maps"
)

// journaldPriorities maps zapcore.Level to journald.Priority.
var journaldPriorities = map[zapcore.Level]journald.Priority{
	zapcore.DebugLevel:  journald.PriorityDebug,
	zapcore.InfoLevel:   journald.PriorityInfo,
	zapcore.WarnLevel:   journald.PriorityWarning,
	zapcore.ErrorLevel:  journald.PriorityErr,
	zapcore.FatalLevel:  journald.PriorityCrit,
	zapcore.PanicLevel:  journald.PriorityCrit,
	zapcore.DPanicLevel: journald.PriorityCrit,
}

// journaldVisibleFields are the field keys that are also appended to the message,
// as journalctl does not show journal fields by default.
var journaldVisibleFields = map[string]struct{}{
	"error":  {},
	"source": {},
}

// journaldSend is replaced in tests.
var journaldSend = journald.Send

// NewJournaldCore returns a zapcore.Core that sends log entries to systemd-journald.
// Fields are sent as journal fields prefixed with the given identifier.
func NewJournaldCore(identifier string, enab zapcore.LevelEnabler) zapcore.Core {
	return &journaldCore{
		LevelEnabler: enab,
		identifier:   identifier,
	}
}

type journaldCore struct {
	zapcore.LevelEnabler
	context    []zapcore.Field
	identifier string
}

func (c *journaldCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

func (c *journaldCore) Sync() error {
	return nil
}

func (c *journaldCore) With(fields []zapcore.Field) zapcore.Core {
	cc := *c
	cc.context = append(cc.context[:len(cc.context):len(cc.context)], fields...)

	return &cc
}

func (c *journaldCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	pri, ok := journaldPriorities[ent.Level]
	if !ok {
		return errors.Errorf("unknown log level %q", ent.Level)
	}

	all := append(fields[:len(fields):len(fields)], c.context...)

	enc := zapcore.NewMapObjectEncoder()
	for _, field := range all {
		field.Key = c.identifier + "_" + field.Key
		field.AddTo(enc)
	}

	// Keys are encoded only now, since Field.AddTo may add more than one entry per field.
	journalFields := make(map[string]interface{}, len(enc.Fields)+1)
	for k, v := range enc.Fields {
		journalFields[encodeJournaldFieldKey(k)] = v
	}
	journalFields["SYSLOG_IDENTIFIER"] = c.identifier

	message := ent.Message + visibleFieldsMsg(journaldVisibleFields, all)
	if ent.LoggerName != "" && ent.LoggerName != c.identifier {
		message = ent.LoggerName + ": " + message
	}

	return journaldSend(message, pri, journalFields)
}

// encodeJournaldFieldKey turns key into a valid journal field name,
// i.e. at most 64 characters of [A-Z0-9_], starting with [A-Z].
// journald silently drops fields with other names.
func encodeJournaldFieldKey(key string) string {
	if key == "" {
		return "EMPTY_KEY"
	}

	runes := []rune(strcase.ToScreamingSnake(key))
	for i, r := range runes {
		if ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r == '_' {
			continue
		}
		runes[i] = '_'
	}
	key = string(runes)

	if key[0] < 'A' || key[0] > 'Z' {
		key = "ESC_" + key
	}

	if len(key) > 64 {
		key = key[:64]
	}

	return key
}

// visibleFieldsMsg renders the fields whose keys are in visibleFieldKeys, sorted by key,
// as a string to be appended to a log message. It is empty if no field matches.
func visibleFieldsMsg(visibleFieldKeys map[string]struct{}, fields []zapcore.Field) string {
	if len(visibleFieldKeys) == 0 || len(fields) == 0 {
		return ""
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		if _, ok := visibleFieldKeys[field.Key]; ok {
			field.AddTo(enc)
		}
	}

	// Encoding an error may add keys like errorVerbose, so filter again.
	keys := maps.Keys(enc.Fields)
	slices.Sort(keys)

	visible := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := visibleFieldKeys[k]; !ok {
			continue
		}

		switch v := enc.Fields[k].(type) {
		case string, []byte, error:
			visible = append(visible, fmt.Sprintf("%s=%q", k, v))
		default:
			visible = append(visible, fmt.Sprintf(`%s="%v"`, k, v))
		}
	}

	if len(visible) == 0 {
		return ""
	}

	return "\t" + strings.Join(visible, ", ")
}
