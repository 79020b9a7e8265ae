package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const (
	membersPath = "/api/v1/members"
	groupsPath  = "/api/v1/groups"
	emojiPath   = "/api/v1/emoji"
)

// ListOptions contains options for list endpoints.
type ListOptions struct {
	Limit  int
	Cursor string
}

// listPath returns the request path for a list endpoint.
func listPath(endpoint string, o *ListOptions) string {
	params := url.Values{}
	params.Set("limit", "100")
	if o != nil {
		if o.Limit > 0 {
			params.Set("limit", strconv.Itoa(o.Limit))
		}
		if o.Cursor != "" {
			params.Set("cursor", o.Cursor)
		}
	}
	return endpoint + "?" + params.Encode()
}

// ListMembers returns one page of members.
func (c *Client) ListMembers(ctx context.Context, opts *ListOptions) (*PaginatedResponse[Member], error) {
	return list[Member](ctx, c, listPath(membersPath, opts), "members")
}

// ListGroups returns one page of groups.
func (c *Client) ListGroups(ctx context.Context, opts *ListOptions) (*PaginatedResponse[Group], error) {
	return list[Group](ctx, c, listPath(groupsPath, opts), "groups")
}

// ListEmoji returns one page of custom emoji.
func (c *Client) ListEmoji(ctx context.Context, opts *ListOptions) (*PaginatedResponse[CustomEmoji], error) {
	return list[CustomEmoji](ctx, c, listPath(emojiPath, opts), "emoji")
}

func list[T any](ctx context.Context, c *Client, path, what string) (*PaginatedResponse[T], error) {
	body, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var result PaginatedResponse[T]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", what, err)
	}

	return &result, nil
}

// all follows next links from the first page until the listing is exhausted.
func all[T any](ctx context.Context, c *Client, first, what string) ([]T, error) {
	var items []T
	seen := map[string]bool{}
	path := first
	for path != "" {
		if seen[path] {
			return nil, fmt.Errorf("pagination loop in %s listing at %s", what, path)
		}
		seen[path] = true

		page, err := list[T](ctx, c, path, what)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Results...)
		path = page.Links.Next
	}
	return items, nil
}

// MentionNames returns every mentionable name: usernames of active
// members followed by group names.
func (c *Client) MentionNames(ctx context.Context) ([]string, error) {
	members, err := all[Member](ctx, c, listPath(membersPath, nil), "members")
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	groups, err := all[Group](ctx, c, listPath(groupsPath, nil), "groups")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	names := make([]string, 0, len(members)+len(groups))
	for _, m := range members {
		if !m.Deactivated && m.Username != "" {
			names = append(names, m.Username)
		}
	}
	for _, g := range groups {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names, nil
}

// EmojiNames returns every custom emoji name and alias.
func (c *Client) EmojiNames(ctx context.Context) ([]string, error) {
	emoji, err := all[CustomEmoji](ctx, c, listPath(emojiPath, nil), "emoji")
	if err != nil {
		return nil, fmt.Errorf("failed to list emoji: %w", err)
	}

	names := make([]string, 0, len(emoji))
	for _, e := range emoji {
		if e.Name != "" {
			names = append(names, e.Name)
		}
		names = append(names, e.Aliases...)
	}
	return names, nil
}
