package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrTownNotFound indica que a cidade não existe na hierarquia.
var ErrTownNotFound = errors.New("cidade não encontrada")

// ResolveTown devolve a cadeia de ancestrais (zona, região) de uma cidade.
func (c *Client) ResolveTown(ctx context.Context, townID int64) (*TownInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/country/specificTownInfo/%d", townID), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string `json:"message"`
		Town    []struct {
			ZoneID     int64  `json:"zoneId"`
			RegionID   int64  `json:"regionId"`
			TownName   string `json:"townName"`
			ZoneName   string `json:"zoneName"`
			RegionName string `json:"regionName"`
		} `json:"town"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Town) == 0 {
		return nil, ErrTownNotFound
	}

	first := resp.Town[0]
	return &TownInfo{
		TownID:     townID,
		ZoneID:     first.ZoneID,
		RegionID:   first.RegionID,
		TownName:   first.TownName,
		ZoneName:   first.ZoneName,
		RegionName: first.RegionName,
	}, nil
}

// Regions lista todas as regiões do país.
func (c *Client) Regions(ctx context.Context) ([]Option, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/country/allRegion", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string `json:"message"`
		Regions []struct {
			ID   int64  `json:"regionId"`
			Name string `json:"regionName"`
		} `json:"regions"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(resp.Regions))
	for _, region := range resp.Regions {
		options = append(options, Option{ID: region.ID, Name: region.Name})
	}
	return options, nil
}

// Zones lista as zonas de uma região.
func (c *Client) Zones(ctx context.Context, regionID int64) ([]Option, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/country/specificZone/%d", regionID), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string `json:"message"`
		Zones   []struct {
			ID   int64  `json:"zoneId"`
			Name string `json:"zoneName"`
		} `json:"zones"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(resp.Zones))
	for _, zone := range resp.Zones {
		options = append(options, Option{ID: zone.ID, Name: zone.Name})
	}
	return options, nil
}

// Towns lista as cidades de uma zona.
func (c *Client) Towns(ctx context.Context, zoneID int64) ([]Option, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/country/specificTown/%d", zoneID), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string `json:"message"`
		Towns   []struct {
			ID   int64  `json:"townId"`
			Name string `json:"townName"`
		} `json:"towns"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(resp.Towns))
	for _, town := range resp.Towns {
		options = append(options, Option{ID: town.ID, Name: town.Name})
	}
	return options, nil
}
