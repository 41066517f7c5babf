package tabular

// Schema is a mapping from column names to byte offsets within a Row.
// It allows one to obtain offsets by name, define new columns, rename
// or remove existing ones, and iterate over column definitions.
type Schema interface {
	Clone() Schema                                                         // Clone returns a copy of this Schema
	Equals(other Schema) error                                             // Equals returns nil iff this and another Schema are equivalent
	RowWidth() int                                                         // RowWidth returns the current byte size of a Row respecting this Schema, without padding
	Size() int                                                             // Size returns the padded byte size of a Row respecting this Schema
	NumColumns() int                                                       // NumColumns returns the number of columns (fixed and variable-length) in this Schema
	NumFixedLengthColumns() int                                            // NumFixedLengthColumns returns the number of fixed-length columns in this Schema
	NumVariableLengthColumns() int                                         // NumVariableLengthColumns returns the number of variable-length columns in this Schema
	NumRemovedColumns() int                                                // NumRemovedColumns returns the number of columns marked for removal
	Repack() (newSchema Schema)                                            // Repack produces a new Schema with gaps and removed columns eliminated
	GetOffset(colName string) (offset Column, err error)                   // GetOffset returns the Column description for a column name
	HasColumn(colName string) bool                                        // HasColumn returns true iff this Schema contains the named column
	CreateColumn(colName string, columnType ColumnType) (Schema, error)    // CreateColumn defines a new column within this Schema
	RenameColumn(oldName string, newName string) (Schema, error)           // RenameColumn renames a column within this Schema
	RemoveColumn(colName string) (newSchema Schema, wasRemoved bool)       // RemoveColumn marks a column for removal at the next Repack
	IsMarkedForRemoval(colName string) bool                                // IsMarkedForRemoval returns true iff the named column is marked for removal
	ColumnNames() []string                                                 // ColumnNames returns the column names in this Schema, in index order
	ColumnTypes() []ColumnType                                             // ColumnTypes returns the column types in this Schema, in index order
	ForEachColumn(fn func(name string, col Column) error) error            // ForEachColumn iterates over the columns in this Schema, not necessarily in index order
}
