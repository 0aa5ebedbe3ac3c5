package handlers

import (
	"strconv"
	"strings"

	"rikky/internal/models"
	"rikky/internal/services"

	"github.com/gofiber/fiber/v2"
)

// parseIDs reads the "ids" parameter: a comma-separated list, repeated
// query values or a form field. The result keeps first occurrences in order.
func parseIDs(c *fiber.Ctx) ([]uint, error) {
	var raw []string
	for _, v := range c.Context().QueryArgs().PeekMulti("ids") {
		raw = append(raw, string(v))
	}
	if len(raw) == 0 {
		if v := c.FormValue("ids"); v != "" {
			raw = append(raw, v)
		}
	}

	seen := make(map[uint]struct{})
	var ids []uint
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 0)
			if err != nil || id == 0 {
				return nil, services.NewDomainError(services.KindValidation, "invalid id %q", part)
			}
			if _, ok := seen[uint(id)]; ok {
				continue
			}
			seen[uint(id)] = struct{}{}
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		return nil, services.NewDomainError(services.KindValidation, "ids is required")
	}
	return ids, nil
}

// parseID reads the positive integer path parameter "id".
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, services.NewDomainError(services.KindValidation, "invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}

// parseStatus reads the path parameter "status", which must be 0 or 1.
func parseStatus(c *fiber.Ctx) (int, error) {
	status, err := strconv.Atoi(c.Params("status"))
	if err != nil || (status != models.StatusDisabled && status != models.StatusEnabled) {
		return 0, services.NewDomainError(services.KindValidation, "status must be 0 or 1, got %q", c.Params("status"))
	}
	return status, nil
}

// parsePageQuery reads page, pageSize and name. Out-of-range values are
// clamped later by PageQuery.Normalize; non-numbers are rejected.
func parsePageQuery(c *fiber.Ctx) (models.PageQuery, error) {
	page, err := optionalInt(c, "page")
	if err != nil {
		return models.PageQuery{}, err
	}
	pageSize, err := optionalInt(c, "pageSize")
	if err != nil {
		return models.PageQuery{}, err
	}
	q := models.PageQuery{Name: strings.TrimSpace(c.Query("name"))}
	if page != nil {
		q.Page = *page
	}
	if pageSize != nil {
		q.PageSize = *pageSize
	}
	return q, nil
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, services.NewDomainError(services.KindValidation, "invalid %s %q", key, v)
	}
	return &n, nil
}

func optionalUint(c *fiber.Ctx, key string) (*uint, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 0)
	if err != nil {
		return nil, services.NewDomainError(services.KindValidation, "invalid %s %q", key, v)
	}
	u := uint(n)
	return &u, nil
}
