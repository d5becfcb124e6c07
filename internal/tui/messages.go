package tui

import (
	"github.com/Veraticus/redact-flow/internal/model"
)

// Completion messages for asynchronous actions. Each carries the artifact
// filename so the handler re-reads live state instead of a captured list.
type filesLoadedMsg struct {
	err   error
	files []model.PendingFile
}

type captureDoneMsg struct {
	err  error
	file model.PendingFile
}

type submitDoneMsg struct {
	err       error
	artifacts []model.Artifact
}

type downloadDoneMsg struct {
	err      error
	filename string
}

type forwardDoneMsg struct {
	err      error
	link     model.PublicLink
	filename string
}

type copiedMsg struct {
	err error
}

type copiedExpiredMsg struct{}
