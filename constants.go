package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeChooseType
	ModeConfirm
)

// InputPurpose says what a ModeTextInput line is collected for.
type InputPurpose int

const (
	InputNodeName InputPurpose = iota
	InputCustomLabel
	InputSnapshotFile
	InputRenameNode
)

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmDeleteConnection
	ConfirmClearConnections
)

const (
	// Node widgets are the name plus two cells of padding and a border on
	// each side, three rows tall.
	widgetPadCols = 4
	widgetRows    = 3

	defaultSnapshotName = "behaviormap.png"
)
