package testsupport

import (
	pkgmodel "github.com/goliatone/go-formbuilder/pkg/model"
)

// NestedTree builds a tree exercising every variant: a heading, a container
// with a text field in its first column, a table with a choice field in its
// first cell and a photo field. Identifiers come from DeterministicFactory.
func NestedTree() []*pkgmodel.Field {
	factory := DeterministicFactory()

	heading := factory.Create("heading")
	container := factory.Create("container")
	container.Container.Columns[0].Fields = append(container.Container.Columns[0].Fields, factory.Create("text"))

	table := factory.Create("table")
	table.Table.Rows[0][0].Fields = append(table.Table.Rows[0][0].Fields, factory.Create("radio"))

	photo := factory.Create("photo")
	email := factory.Create("email")
	email.Required = true

	return []*pkgmodel.Field{heading, container, table, photo, email}
}
