package tui

import "github.com/charmbracelet/bubbles/spinner"

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return s
}

func renderLoading(spin string) string {
	return renderPage("GO-FIN-TRACK", spin+" Carregando sessão...", "")
}
