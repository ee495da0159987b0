// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fakeapi is an in-memory implementation of the finance REST API
// used by tests of the adapter, service and client packages.
//
// It issues real HS256 tokens carrying {id, email, exp}, enforces bearer
// authentication on /transactions routes and answers errors with the
// {"message": "..."} body the client expects. Individual routes can be made
// to fail ([Server.Fail]) or to block until released ([Server.Hold]), which
// lets tests drive error and concurrency scenarios deterministically.
package fakeapi
