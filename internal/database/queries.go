/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	// User queries
	queryGetUsers = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		ORDER BY created_at`

	queryInsertUser = `
		INSERT INTO users (id, name, email) VALUES (?, ?, ?)`

	queryGetUserById = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE id = ?`

	queryGetUserByEmail = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE email = ?`

	// Account queries
	queryGetAccount = `
		SELECT id, user_id, name, balance, version, created_at, updated_at
		FROM accounts
		WHERE user_id = ? AND name = ?`

	queryGetUserAccounts = `
		SELECT id, user_id, name, balance, version, created_at, updated_at
		FROM accounts
		WHERE user_id = ?
		ORDER BY name`

	queryCountUserAccounts = `
		SELECT COUNT(*) FROM accounts WHERE user_id = ?`

	queryInsertAccount = `
		INSERT INTO accounts (id, user_id, name, balance, version)
		VALUES (?, ?, ?, ?, 1)`

	queryUpdateAccountBalance = `
		UPDATE accounts
		SET balance = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND name = ? AND version = ?`

	// Transaction log queries (append-only: no UPDATE or DELETE exists)
	queryInsertTransaction = `
		INSERT INTO transactions (
			id, transaction_type, source_account_id, dest_account_id,
			user_id, dest_user_id, amount, reference, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, transaction_type, source_account_id, dest_account_id,
		          user_id, dest_user_id, amount, reference, created_at`

	queryGetTransactionHistory = `
		SELECT id, transaction_type, source_account_id, dest_account_id,
		       user_id, dest_user_id, amount, reference, created_at
		FROM transactions
		WHERE user_id = ? OR dest_user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	queryGetAccountMovements = `
		SELECT amount, CASE WHEN dest_account_id = ? THEN 1 ELSE -1 END
		FROM transactions
		WHERE source_account_id = ? OR dest_account_id = ?`
)
