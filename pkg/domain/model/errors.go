package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for mapping failures to HTTP responses
var (
	ErrTagValidation = goerr.NewTag("validation")
	ErrTagParse      = goerr.NewTag("parse")
	ErrTagExport     = goerr.NewTag("export")
	ErrTagTimeout    = goerr.NewTag("upstream_timeout")
	ErrTagUpstream   = goerr.NewTag("upstream")
	ErrTagConfig     = goerr.NewTag("config")
)

// Sentinel errors for response parsing
var (
	ErrNoJSONFound   = goerr.New("no JSON array found in response", goerr.T(ErrTagParse))
	ErrMalformedJSON = goerr.New("malformed JSON array in response", goerr.T(ErrTagParse))
)
