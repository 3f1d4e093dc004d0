// Package route builds RequestDescriptor values for a representative
// slice of the database's REST surface: collection CRUD, AQL query
// cursors, and single-document access. These are mechanical URL/body
// builders, explicitly out of scope for the connection pool itself; the
// pool only needs to know how to execute a RequestDescriptor, not how
// one was built.
package route

import (
	"fmt"
	"net/http"

	"github.com/mysticaltech/arangojs"
)

const apiBase = "/_api"

// Collection builds a descriptor that fetches a collection's metadata.
func Collection(name string) arango.RequestDescriptor {
	return arango.RequestDescriptor{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("%s/collection/%s", apiBase, name),
	}
}

// CreateCollection builds a descriptor that creates a new collection.
func CreateCollection(name string) arango.RequestDescriptor {
	return arango.RequestDescriptor{
		Method: http.MethodPost,
		Path:   apiBase + "/collection",
		Body:   map[string]any{"name": name},
	}
}

// Document builds a descriptor that fetches a single document by key.
func Document(collection, key string) arango.RequestDescriptor {
	return arango.RequestDescriptor{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("%s/document/%s/%s", apiBase, collection, key),
	}
}

// Cursor builds a descriptor that opens an AQL query cursor.
func Cursor(query string, bindVars map[string]any) arango.RequestDescriptor {
	return arango.RequestDescriptor{
		Method: http.MethodPost,
		Path:   apiBase + "/cursor",
		Body: map[string]any{
			"query":    query,
			"bindVars": bindVars,
		},
	}
}

// CursorNext builds a descriptor that advances an already-open cursor.
// host pins the request to the coordinator that originally opened the
// cursor, since cursor state is not shared across coordinators.
func CursorNext(id string, host int) arango.RequestDescriptor {
	pin := host
	return arango.RequestDescriptor{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("%s/cursor/%s", apiBase, id),
		Host:   &pin,
	}
}
