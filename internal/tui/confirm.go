package tui

type confirmModel struct {
	message string
	id      int64
}

func (m confirmModel) View() string {
	content := "Tem certeza que deseja apagar \"" + m.message + "\"?\n\n"
	content += "y sim    n não"
	return overlayBoxStyle.Render(content)
}
