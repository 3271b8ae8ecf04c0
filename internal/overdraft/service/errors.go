package service

import "errors"

var (
	ErrInvalidDocument = errors.New("invalid_document")
	ErrInvalidLimit    = errors.New("invalid_limit")
	ErrEmptyName       = errors.New("empty_name")
	ErrClientNotFound  = errors.New("client_not_found")
	ErrClientExists    = errors.New("client_already_exists")

	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidSession     = errors.New("invalid_session")

	ErrMalformedOperationPassword = errors.New("malformed_operation_password")
	ErrWrongOperationPassword     = errors.New("wrong_operation_password")

	ErrInvalidAppCredentials = errors.New("invalid_app_credentials")
	ErrTokenExpired          = errors.New("token_expired")
	ErrTokenMalformed        = errors.New("token_malformed")
	ErrApplicationRevoked    = errors.New("application_revoked")
)
