package usecase

import (
	"errors"
	"fmt"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

func toPage(p dto.PageRequest) repository.Page {
	p.DefaultPage()
	return repository.Page{Limit: p.Limit, Offset: p.Offset}
}

func pageResponse(p repository.Page) dto.PageResponse {
	return dto.PageResponse{Limit: p.Limit, Offset: p.Offset}
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
}

// requireAny valida el principal y exige al menos uno de los roles.
func requireAny(p domain.Principal, roles ...string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.HasAnyRole(roles...) {
		return domain.ErrForbidden
	}
	return nil
}

var errMailerDisabled = errors.New("mailer no configurado")
