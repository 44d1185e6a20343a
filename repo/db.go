package repo

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/openxroad/adminapi/model"
)

// errAlreadyExists guards the unique secondary indexes: go-memdb does not
// enforce them on Insert, so repositories check before writing.
var errAlreadyExists = model.ErrAlreadyExists

const (
	// PK is the alias for "id". Index "id" is required by all tables.
	// In the domain, the primary key is not always "id".
	PK = "id"

	// ClientForeignPK indexes rows by their owning client.
	ClientForeignPK = "client_uuid"
)

func mergeSchema() (*memdb.DBSchema, error) {
	included := []*memdb.DBSchema{
		ClientSchema(),
		EndpointSchema(),
		LocalGroupSchema(),
		AccessRightSchema(),
		IdentifierSchema(),
	}

	tables := map[string]*memdb.TableSchema{}
	for _, partialSchema := range included {
		for name, table := range partialSchema.Tables {
			if _, ok := tables[name]; ok {
				return nil, fmt.Errorf("table %q already there", name)
			}
			tables[name] = table
		}
	}
	return &memdb.DBSchema{Tables: tables}, nil
}

func GetSchema() (*memdb.DBSchema, error) {
	schema, err := mergeSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}
