package gemini

// NewStreamFromIter exposes the stream constructor to external tests.
var NewStreamFromIter = newStream
