package entry

import (
	"context"

	"github.com/windedu/windtest-entry-app/internal/notion"
)

// Store is the slice of the remote store client the entry core consumes.
// *notion.Client satisfies it; tests substitute an in-memory fake.
type Store interface {
	QueryAll(ctx context.Context, databaseID string, filter notion.Filter) ([]notion.Page, error)
	CreatePage(ctx context.Context, databaseID string, props notion.Properties) (string, error)
	UpdatePage(ctx context.Context, pageID string, props notion.Properties) error
	CreateComment(ctx context.Context, pageID, mentionUserID, message string) error
}
