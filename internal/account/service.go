package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/quatet/storefront-api/internal/gateway"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
)

type gatewayAPI interface {
	FetchProfile(ctx context.Context) (*gateway.Profile, error)
	UpdateProfile(ctx context.Context, input gateway.ProfileUpdateInput) (*gateway.Profile, error)
}

// Service is the profile read/update surface.
type Service struct {
	gw gatewayAPI
}

func NewService(gw gatewayAPI) (*Service, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	return &Service{gw: gw}, nil
}

// Profile returns the caller's profile.
func (s *Service) Profile(ctx context.Context) (*gateway.Profile, error) {
	return s.gw.FetchProfile(ctx)
}

// Update rewrites the editable profile fields. The full name cannot be
// blanked out; phone and address may be.
func (s *Service) Update(ctx context.Context, input gateway.ProfileUpdateInput) (*gateway.Profile, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	if input.FullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	return s.gw.UpdateProfile(ctx, input)
}
