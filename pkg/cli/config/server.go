package config

import (
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr       string
	CORSOrigin string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("TESTFORGE_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "cors-origin",
			Usage:       "Origin allowed to call the API from a browser (any origin if not set)",
			Value:       "",
			Sources:     cli.EnvVars("TESTFORGE_CORS_ORIGIN"),
			Destination: &s.CORSOrigin,
		},
	}
}
