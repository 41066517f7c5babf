package tabular

// Column describes the position and type of a single named field
// within a Row.
type Column interface {
	Clone() Column         // Clone returns a copy of this Column
	Index() int            // Index returns the index of this Column within a Schema
	SetIndex(newIndex int) // SetIndex modifies the index of this Column within a Schema
	Start() int            // Start returns the starting byte offset of this Column within a Row
	Type() ColumnType      // Type returns the ColumnType of this Column
}
