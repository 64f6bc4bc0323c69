package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error. A nil error is rendered as an empty value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("")}
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op creates the attribute used to tag log lines with the operation name.
func Op(opn string) slog.Attr {
	return slog.String("op", opn)
}
