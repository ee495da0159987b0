// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the
// service layer and the terminal UI.
//
// The backend speaks Portuguese, so do these messages. Keeping them in one
// place ensures consistent wording between the services that pick a message
// and the screens that show it.
package app

const (
	// MsgLoadFailed is shown when the dashboard data could not be fetched and
	// the backend gave no reason.
	MsgLoadFailed = "Não foi possível carregar os dados financeiros."

	// MsgCreateFailed is shown next to the create form.
	MsgCreateFailed = "Erro ao criar a transação. Tente novamente."

	// MsgUpdateFailed is shown inside the edit form.
	MsgUpdateFailed = "Erro ao atualizar a transação. Tente novamente."

	// MsgDeleteFailed is shown when a delete was rejected without a reason.
	MsgDeleteFailed = "Erro ao apagar a transação."

	// MsgAuthFailed is the fallback for login and registration failures.
	MsgAuthFailed = "Ocorreu um erro. Tente novamente."

	// MsgInvalidToken is shown when the backend issued a token the client
	// cannot read.
	MsgInvalidToken = "Não foi possível validar o acesso. Tente novamente."

	// MsgNoConnection is shown when the backend cannot be reached at all.
	MsgNoConnection = "Sem conexão com o servidor."

	// MsgSessionExpired is shown after a request was rejected because the
	// token is no longer accepted.
	MsgSessionExpired = "Sua sessão expirou. Faça login novamente."

	// MsgEmptyFields is shown when a required form field is empty.
	MsgEmptyFields = "Preencha todos os campos."

	// MsgInvalidAmount is shown when the amount is not a positive number.
	MsgInvalidAmount = "Informe um valor maior que zero."

	// MsgPasswordMismatch is shown when the password confirmation differs.
	MsgPasswordMismatch = "As senhas não coincidem."

	// MsgRegistered is the toast shown after a successful registration.
	MsgRegistered = "Conta criada com sucesso! Redirecionando..."

	// MsgCopied is the toast shown after a row was copied to the clipboard.
	MsgCopied = "Transação copiada para a área de transferência."
)
