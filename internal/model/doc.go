// Package model contains the plain data types shared by the tracker, the ledger and the reports.
package model
