package repair

// DefaultTable returns the reference table: UTF-8 emoji and punctuation that
// were read back as Latin-1. A fresh slice is returned on every call.
//
// Two patterns (briefcase, green heart) are kept exactly as they appear in
// files damaged by the original authoring tool; their third byte differs
// from the Latin-1 reading of the target.
func DefaultTable() Table {
	return Table{
		{Name: "plus sign", From: "\u00e2\u009e\u0095", To: "➕"},
		{Name: "megaphone", From: "\u00f0\u009f\u0093\u00a2", To: "📢"},
		{Name: "chart", From: "\u00f0\u009f\u0093\u008a", To: "📊"},
		{Name: "gear", From: "\u00e2\u009a\u0099\u00ef\u00b8\u008f", To: "⚙\ufe0f"},
		// The closing quote belongs to the surrounding attribute and is put back.
		{Name: "student", From: "\u00f0\u009f\u0091\u00a8\u00e2\u0080\u008d\u00f0\u009f\u008e\u0093\"", To: "👨\u200d🎓\""},
		{Name: "briefcase", From: "\u00f0\u009f\u0091\u00bc", To: "💼"},
		{Name: "checkmark", From: "\u00e2\u009c\u0085", To: "✅"},
		{Name: "green heart", From: "\u00f0\u009f\u0091\u009a", To: "💚"},
		{Name: "em dash", From: "\u00e2\u0080\u0094", To: "—"},
	}
}
