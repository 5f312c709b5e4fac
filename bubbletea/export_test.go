package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// Blocks exports the transcript blocks for testing.
func Blocks(m Model) []MessageBlock {
	return m.blocks
}
