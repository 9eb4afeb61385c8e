package log

// Level orders log severity from most to least urgent, matching logrus's
// own ordering so a Level can be handed straight to the underlying logger.
type Level int

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)
