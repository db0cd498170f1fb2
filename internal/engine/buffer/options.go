package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithCRLFNormalization converts CRLF and lone CR line endings to LF
// when text enters the buffer.
func WithCRLFNormalization() Option {
	return func(b *Buffer) {
		b.normalizeCRLF = true
	}
}

// WithReadOnly makes every write operation fail with ErrReadOnly.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}
