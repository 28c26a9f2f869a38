package importing

import "errors"

var (
	// ErrNoBaseline indica que a tabela fato está vazia; a carga completa precisa rodar antes
	ErrNoBaseline = errors.New("no baseline")

	ErrImportInProgress = errors.New("import already in progress")
)

const (
	MessageUpToDate     = "already up to date"
	MessageNoNewRecords = "no new unique records"
)
