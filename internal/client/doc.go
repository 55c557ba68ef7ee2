// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the timctl command-line runtime.
//
// It parses one command per process, runs it against the encrypted storage
// as a cancellable task, and prints the outcome. The biometric prompt is
// simulated: the user confirms on stdin and the keystore cipher is then
// authenticated.
package client
