package http

import "github.com/testforge-dev/testforge/pkg/domain/interfaces"

// Test-only accessor methods for UseCases
func (u *UseCases) Generation() interfaces.Generation {
	return u.generation
}

func (u *UseCases) Export() interfaces.Export {
	return u.export
}
