package tui

import "github.com/MKhiriev/go-fin-track/models"

// RefreshedMsg is sent into the program by the background refresh job after
// each periodic refresh.
type RefreshedMsg struct {
	Err error
}

type sessionRestoredMsg struct{}

type loginDoneMsg struct {
	identity models.Identity
	err      error
}

type registerDoneMsg struct {
	email string
	err   error
}

type loggedOutMsg struct{}

type refreshDoneMsg struct {
	err error
}

type createDoneMsg struct {
	err error
}

type updateDoneMsg struct {
	id  int64
	err error
}

type deleteDoneMsg struct {
	id  int64
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
