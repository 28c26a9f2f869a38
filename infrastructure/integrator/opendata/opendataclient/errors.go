package opendataclient

import "errors"

var ErrUnexpectedStatus = errors.New("status inesperado da API de dados abertos")
