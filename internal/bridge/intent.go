package bridge

// LegacyIntent is the free-text form carried by the deprecated
// emotional_intent field.
type LegacyIntent struct {
	Text string
}

// StructuredIntent is the base/intensity/specific form. Any member may be nil.
type StructuredIntent struct {
	Base      *string
	Intensity *string
	Specific  *string
}

// Legacy reports the legacy form of the intent, if the caller supplied one.
func (i EmotionalIntent) Legacy() (LegacyIntent, bool) {
	if i.EmotionalIntent == nil {
		return LegacyIntent{}, false
	}
	return LegacyIntent{Text: *i.EmotionalIntent}, true
}

// Structured reports the structured form of the intent, if any of its
// members is set. Both forms can be present at once; neither wins here.
func (i EmotionalIntent) Structured() (StructuredIntent, bool) {
	if i.BaseEmotion == nil && i.Intensity == nil && i.SpecificEmotion == nil {
		return StructuredIntent{}, false
	}
	return StructuredIntent{
		Base:      i.BaseEmotion,
		Intensity: i.Intensity,
		Specific:  i.SpecificEmotion,
	}, true
}

// Forms names the intent forms present, for logging.
func (i EmotionalIntent) Forms() []string {
	forms := make([]string, 0, 2)
	if _, ok := i.Legacy(); ok {
		forms = append(forms, "legacy")
	}
	if _, ok := i.Structured(); ok {
		forms = append(forms, "structured")
	}
	return forms
}
