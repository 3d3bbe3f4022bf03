package wire

// Status is a codec result code. Codecs report failures as a Status; the
// message layer translates them into codec_failure errors.
type Status uint8

const (
	StatusOK Status = iota
	StatusOutOfBytes
	StatusPayloadSizeMismatch
	StatusUnknownFixedWidth
	StatusInvalidWidthFlag
	StatusNameTooLong
	StatusFieldTooLarge
	StatusInvalidUTF8
	StatusInvalidValue
	StatusNilPayload
	StatusTrailingBytes
	StatusCodecError
)

var statusNames = [...]string{
	StatusOK:                  "ok",
	StatusOutOfBytes:          "out of bytes",
	StatusPayloadSizeMismatch: "payload size mismatch",
	StatusUnknownFixedWidth:   "unknown type with fixed width",
	StatusInvalidWidthFlag:    "invalid width flag",
	StatusNameTooLong:         "field name too long",
	StatusFieldTooLarge:       "field too large",
	StatusInvalidUTF8:         "invalid UTF-8",
	StatusInvalidValue:        "invalid field value",
	StatusNilPayload:          "nil payload",
	StatusTrailingBytes:       "trailing bytes",
	StatusCodecError:          "codec error",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown status"
}

// Error lets a Status be returned directly as an error.
func (s Status) Error() string {
	return "fudge codec: " + s.String()
}
