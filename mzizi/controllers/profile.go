// mzizi/controllers/profile.go
package controllers

import (
	"context"

	"mzizi/mzizi/sources/psql/dao"
	"mzizi/mzizi/types"
)

type ProfileController struct {
	dao *dao.ProfileDAO
}

func NewProfileController(dao *dao.ProfileDAO) *ProfileController {
	return &ProfileController{dao: dao}
}

func (c *ProfileController) GetProfile(ctx context.Context, id string) (types.BusinessProfile, error) {
	return c.dao.GetProfileByID(ctx, id)
}

func (c *ProfileController) ListProfiles(ctx context.Context) ([]types.BusinessProfile, error) {
	return c.dao.ListProfiles(ctx)
}

func (c *ProfileController) CreateProfile(ctx context.Context, p types.BusinessProfile) (types.BusinessProfile, error) {
	return c.dao.CreateProfile(ctx, p)
}

func (c *ProfileController) UpdateProfile(ctx context.Context, p types.BusinessProfile) (types.BusinessProfile, error) {
	return c.dao.UpdateProfile(ctx, p)
}
