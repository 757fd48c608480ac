package client

import (
	"net/url"
	"strconv"
)

// Page is the backend's pagination envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Last          bool  `json:"last"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func pageParams(page, size int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	return params
}

func idPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
