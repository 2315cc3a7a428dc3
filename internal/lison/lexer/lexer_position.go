package lexer

// ConvertSingleIndexToTextEditorPosition converts a byte index to a text editor position.
func ConvertSingleIndexToTextEditorPosition(buffer []byte, charIndex int) Position {
	var line, col int

	for i := range buffer {
		if i == charIndex {
			break
		}

		if buffer[i] == byte('\n') {
			line++
			col = 0
		} else {
			col++
		}
	}

	pos := Position{Line: line, Character: col}

	return pos
}

// ConvertTextEditorPositionToIndex is the inverse of
// ConvertSingleIndexToTextEditorPosition. Positions past the end of a line are
// clamped to the line end, positions past the end of the buffer to len(buffer).
func ConvertTextEditorPositionToIndex(buffer []byte, pos Position) int {
	var line, col int

	for i := range buffer {
		if line == pos.Line && col == pos.Character {
			return i
		}

		if buffer[i] == byte('\n') {
			if line == pos.Line {
				return i
			}

			line++
			col = 0
		} else {
			col++
		}
	}

	return len(buffer)
}

// advancePosition moves pos over text.
func advancePosition(pos Position, text []byte) Position {
	for _, c := range text {
		if c == '\n' {
			pos.Line++
			pos.Character = 0
		} else {
			pos.Character++
		}
	}

	return pos
}
