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

const saleColumns = `
		transaction_id, status_code, status_text, client_email, client_name,
		client_document, client_phone, product_name, total_value_cents,
		created_at, updated_at, raw_payload, attendant_code, attendant_name,
		campaign_code, campaign_name`

const (
	// Sale queries. The upsert is a single conditional write: two events
	// for the same transaction id arriving concurrently can never
	// double-insert, and the later one overwrites every mutable field.
	queryUpsertSale = `
		INSERT INTO sales (` + saleColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			status_code = excluded.status_code,
			status_text = excluded.status_text,
			client_email = excluded.client_email,
			client_name = excluded.client_name,
			client_document = excluded.client_document,
			client_phone = excluded.client_phone,
			product_name = excluded.product_name,
			total_value_cents = excluded.total_value_cents,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			raw_payload = excluded.raw_payload,
			attendant_code = excluded.attendant_code,
			attendant_name = excluded.attendant_name,
			campaign_code = excluded.campaign_code,
			campaign_name = excluded.campaign_name
		RETURNING ` + saleColumns

	queryGetSaleByTransactionId = `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE transaction_id = ?`

	// Reporting windows filter on the last status change when present,
	// falling back to the first sighting.
	queryGetSalesByDateRange = `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE datetime(COALESCE(updated_at, created_at)) >= datetime(?)
		  AND datetime(COALESCE(updated_at, created_at)) <= datetime(?)
		ORDER BY datetime(COALESCE(updated_at, created_at))`

	queryGetSalesByDateRangeForAttendant = `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE datetime(COALESCE(updated_at, created_at)) >= datetime(?)
		  AND datetime(COALESCE(updated_at, created_at)) <= datetime(?)
		  AND lower(attendant_code) = ?
		ORDER BY datetime(COALESCE(updated_at, created_at))`

	queryListSales = `
		SELECT ` + saleColumns + `
		FROM sales
		ORDER BY datetime(created_at) DESC`

	queryUpdateSaleStatus = `
		UPDATE sales
		SET status_code = ?, status_text = ?, updated_at = ?
		WHERE transaction_id = ?`

	queryAssignSaleAttendant = `
		UPDATE sales
		SET attendant_code = ?, attendant_name = ?
		WHERE transaction_id = ?`

	// Attendant queries
	queryInsertAttendant = `
		INSERT INTO attendants (code, name, monthly_cost) VALUES (?, ?, ?)`

	queryGetAttendantByCode = `
		SELECT code, name, monthly_cost
		FROM attendants
		WHERE lower(code) = ?`

	queryListAttendants = `
		SELECT code, name, monthly_cost
		FROM attendants
		ORDER BY name COLLATE NOCASE`

	queryUpdateAttendant = `
		UPDATE attendants
		SET code = ?, name = ?, monthly_cost = ?
		WHERE lower(code) = ?`

	queryDeleteAttendant = `
		DELETE FROM attendants WHERE lower(code) = ?`

	// Campaign queries
	queryInsertCampaign = `
		INSERT INTO campaigns (code, name, cost) VALUES (?, ?, ?)`

	queryGetCampaignByCode = `
		SELECT code, name, cost
		FROM campaigns
		WHERE lower(code) = ?`

	queryListCampaigns = `
		SELECT code, name, cost
		FROM campaigns
		ORDER BY name COLLATE NOCASE`

	queryUpdateCampaign = `
		UPDATE campaigns
		SET code = ?, name = ?, cost = ?
		WHERE lower(code) = ?`

	queryDeleteCampaign = `
		DELETE FROM campaigns WHERE lower(code) = ?`

	// Settings queries (singleton row, id fixed at 1)
	queryGetSettings = `
		SELECT user_name, user_email, monthly_investment
		FROM settings
		WHERE id = 1`

	querySaveSettings = `
		INSERT OR REPLACE INTO settings (id, user_name, user_email, monthly_investment)
		VALUES (1, ?, ?, ?)`
)
