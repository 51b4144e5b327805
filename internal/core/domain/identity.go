// Package domain concentra entidades e estruturas centrais da API.
package domain

import (
	"fmt"
	"time"
)

// Role classifica o nível de acesso do chamador.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleEmployer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity é o chamador resolvido a partir de um token assinado.
// Imutável durante a requisição; nunca é persistida.
type Identity struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

func AnonymousIdentity() Identity {
	return Identity{Role: RoleAnonymous}
}

func (i Identity) IsAnonymous() bool {
	return i.Role == RoleAnonymous || i.Role == ""
}

// IsOwnerOrAdmin informa se a identidade pode agir sobre um recurso de
// ownerSubject. Admins sempre podem; os demais apenas sobre os próprios.
func IsOwnerOrAdmin(identity Identity, ownerSubject string) bool {
	if identity.Role == RoleAdmin {
		return true
	}
	if identity.IsAnonymous() || ownerSubject == "" {
		return false
	}
	return identity.Subject == ownerSubject
}

// ClientCredential é uma credencial configurada no processo, trocada por um
// token assinado no endpoint de emissão.
type ClientCredential struct {
	Subject string
	Secret  string
	Role    Role
}
