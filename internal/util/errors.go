package util

import "errors"

var (
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrCampaignClosed      = errors.New("campaign is not open for applications")
	ErrRoleNotInCampaign   = errors.New("role does not belong to this campaign")
	ErrDuplicatePreference = errors.New("duplicate role in preference list")
	ErrQuestionMismatch    = errors.New("question does not belong to this application's campaign")
	ErrSlotFull            = errors.New("interview slot is fully booked")
	ErrAlreadyFinalised    = errors.New("application status already finalised")
)
