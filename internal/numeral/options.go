package numeral

// EncodeOptions controls how integers are spelled. The zero value spells
// numbers the conventional way: 영 for zero, 마이너스 for negatives and no 일
// before any unit.
type EncodeOptions struct {
	// ZeroChar is returned for zero. Empty means 영.
	ZeroChar string
	// KeepOneForSmallUnits writes 일 before 십, 백 and 천.
	KeepOneForSmallUnits bool
	// KeepOneForLargeUnits writes 일 before 만, 억, 조 and 경.
	KeepOneForLargeUnits bool
	// UseSpacingBetweenLargeUnits separates large-unit groups with a space.
	UseSpacingBetweenLargeUnits bool
	// NegativeWord prefixes negative values. Empty means 마이너스.
	NegativeWord string
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		ZeroChar:     defaultZeroChar,
		NegativeWord: defaultNegativeWord,
	}
}

func (o EncodeOptions) withDefaults() EncodeOptions {
	if o.ZeroChar == "" {
		o.ZeroChar = defaultZeroChar
	}
	if o.NegativeWord == "" {
		o.NegativeWord = defaultNegativeWord
	}
	return o
}

// DecodeOptions controls how numeral text is read back. Every zero-valued
// field falls back to its default.
type DecodeOptions struct {
	// ZeroChar is accepted as zero in addition to 영 and 공.
	ZeroChar string
	// NegativeWord marks a negative value when it prefixes the text.
	NegativeWord string
	// Output selects the representation Decode returns. Empty means OutputAuto.
	Output OutputMode
}

func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		ZeroChar:     defaultZeroChar,
		NegativeWord: defaultNegativeWord,
		Output:       OutputAuto,
	}
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if o.ZeroChar == "" {
		o.ZeroChar = defaultZeroChar
	}
	if o.NegativeWord == "" {
		o.NegativeWord = defaultNegativeWord
	}
	if o.Output == "" {
		o.Output = OutputAuto
	}
	return o
}
