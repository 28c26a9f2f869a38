package authenticating

import "errors"

var (
	ErrInvalidToken   = errors.New("token inválido")
	ErrExpiredToken   = errors.New("token expirado")
	ErrMissingSecret  = errors.New("segredo de assinatura não configurado")
	ErrMissingSubject = errors.New("identificação do token obrigatória")
)
