package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// CityPosts lista posts do nível cidade.
func (c *Client) CityPosts(ctx context.Context, townID int64) ([]Post, error) {
	return c.postsByScope(ctx, "/api/post/city", map[string]any{"townId": townID})
}

// ZonePosts lista posts do nível zona.
func (c *Client) ZonePosts(ctx context.Context, zoneID int64) ([]Post, error) {
	return c.postsByScope(ctx, "/api/post/zone", map[string]any{"zoneId": zoneID})
}

// RegionPosts lista posts do nível região.
func (c *Client) RegionPosts(ctx context.Context, regionID int64) ([]Post, error) {
	return c.postsByScope(ctx, "/api/post/region", map[string]any{"regionId": regionID})
}

// CountryPosts lista posts do nível país.
func (c *Client) CountryPosts(ctx context.Context, countryID int64) ([]Post, error) {
	return c.postsByScope(ctx, "/api/post/country", map[string]any{"countryId": countryID})
}

// StationPosts lista posts registrados pela própria delegacia.
func (c *Client) StationPosts(ctx context.Context, stationID string) ([]Post, error) {
	return c.postsByScope(ctx, "/api/post/policeStation/post", map[string]any{"policeStationId": stationID})
}

func (c *Client) postsByScope(ctx context.Context, path string, body map[string]any) ([]Post, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string `json:"message"`
		Posts   []Post `json:"posts"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// CreatePost cadastra um post na cidade; foto é opcional.
func (c *Client) CreatePost(ctx context.Context, draft PostDraft, photo *FileField) (*Post, error) {
	fields := map[string]string{
		"townId":          strconv.FormatInt(draft.TownID, 10),
		"subCityId":       strconv.FormatInt(draft.SubCityID, 10),
		"postDescription": draft.Description,
		"firstName":       draft.FirstName,
		// o backend espera o campo com esta grafia
		"middelName":      draft.MiddleName,
		"lastName":        draft.LastName,
		"lastLocation":    draft.LastLocation,
		"gender":          draft.Gender,
		"policeOfficerId": draft.OfficerID,
		"policeStationId": draft.StationID,
		"postStatus":      strconv.Itoa(draft.PostStatus),
		"personStatus":    draft.PersonStatus,
	}
	if draft.Age != nil {
		fields["age"] = strconv.Itoa(*draft.Age)
	} else {
		fields["age"] = ""
	}

	req, err := c.newMultipartRequest(ctx, http.MethodPost, "/api/post/addpost", fields, photo)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Post    Post   `json:"post"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// UpdatePost altera um post existente; a imagem nunca é reenviada.
func (c *Client) UpdatePost(ctx context.Context, postID int64, draft PostDraft) (*Post, error) {
	body := map[string]any{
		"townId":          draft.TownID,
		"subCityId":       draft.SubCityID,
		"postDescription": draft.Description,
		"firstName":       draft.FirstName,
		"middleName":      draft.MiddleName,
		"lastName":        draft.LastName,
		"lastLocation":    draft.LastLocation,
		"gender":          draft.Gender,
		"policeOfficerId": draft.OfficerID,
		"policeStationId": draft.StationID,
		"postStatus":      draft.PostStatus,
		"personStatus":    draft.PersonStatus,
	}
	if draft.Age != nil {
		body["age"] = *draft.Age
	} else {
		body["age"] = nil
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/post/editPost/%d", postID), body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Post    Post   `json:"post"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// PromotePostToZone replica o post na tabela de zona.
func (c *Client) PromotePostToZone(ctx context.Context, postID, zoneID int64) error {
	return c.promotePost(ctx, "/api/post/addPostToZone", map[string]any{"postId": postID, "zoneId": zoneID})
}

// PromotePostToRegion replica o post na tabela de região.
func (c *Client) PromotePostToRegion(ctx context.Context, postID, regionID int64) error {
	return c.promotePost(ctx, "/api/post/addPostToRegion", map[string]any{"postId": postID, "regionId": regionID})
}

// PromotePostToCountry replica o post na tabela nacional.
func (c *Client) PromotePostToCountry(ctx context.Context, postID, countryID int64) error {
	return c.promotePost(ctx, "/api/post/addPostToCountry", map[string]any{"postId": postID, "countryId": countryID})
}

func (c *Client) promotePost(ctx context.Context, path string, body map[string]any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(req, &resp); err != nil {
		return err
	}
	return checkSuccess(resp.Success, resp.Message)
}

// PostInZone verifica se o post já foi replicado para a zona.
func (c *Client) PostInZone(ctx context.Context, postID int64) (bool, error) {
	return c.postPresence(ctx, fmt.Sprintf("/api/post/cheackPostInZone/%d", postID))
}

// PostInRegion verifica se o post já foi replicado para a região.
func (c *Client) PostInRegion(ctx context.Context, postID int64) (bool, error) {
	return c.postPresence(ctx, fmt.Sprintf("/api/post/cheackPostInRegion/%d", postID))
}

// PostInCountry verifica se o post já foi replicado para o país.
func (c *Client) PostInCountry(ctx context.Context, postID int64) (bool, error) {
	return c.postPresence(ctx, fmt.Sprintf("/api/post/cheackPostInCountry/%d", postID))
}

func (c *Client) postPresence(ctx context.Context, path string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}

	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(req, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}
