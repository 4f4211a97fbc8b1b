// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

// Package servicelog persists completed-service records locally and serves as
// a durable last-service source for the maintenance projection.
package servicelog

import (
	"database/sql"
	"time"

	"github.com/acertaexpress/fleetwatch/context"
	"github.com/acertaexpress/fleetwatch/model"
	"github.com/acertaexpress/fleetwatch/storage"
)

type (
	// Convenience alias for importing modules
	DbHandle = storage.DbHandle
)

var NewDb = storage.NewDb

type Storage struct {
	db *DbHandle

	stmtRecord stmtRecord
	stmtLast   stmtLast
}

func NewStorage(db *storage.DbHandle) (*Storage, error) {
	handle := Storage{db: db}
	if err := db.InitStmt(
		&handle.stmtRecord,
		&handle.stmtLast,
	); err != nil {
		return nil, err
	}
	return &handle, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Record logs a completed service at the given odometer reading.
func (s *Storage) Record(deviceId int, serviceType string, odometerKm float64) error {
	return s.stmtRecord.run(deviceId, serviceType, odometerKm, time.Now().Unix())
}

// LastService implements maintenance.ServiceHistoryProvider: the highest
// recorded odometer for the device and service type, 0 when none exists.
func (s *Storage) LastService(_ context.Context, device model.Device, rule model.Maintenance) (float64, error) {
	km, err := s.stmtLast.run(device.Id, rule.Type)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return km, err
}

type stmtRecord storage.DbStmt

func (s *stmtRecord) Init(db storage.DbHandle) (err error) {
	s.Stmt, err = db.Prepare("ServiceRecord", `
		INSERT INTO service_log(device_id, service_type, odometer_km, recorded_at)
		VALUES (?, ?, ?, ?)`,
	)
	return
}

func (s *stmtRecord) run(deviceId int, serviceType string, odometerKm float64, recordedAt int64) error {
	_, err := s.Stmt.Exec(deviceId, serviceType, odometerKm, recordedAt)
	return err
}

type stmtLast storage.DbStmt

func (s *stmtLast) Init(db storage.DbHandle) (err error) {
	s.Stmt, err = db.Prepare("ServiceLast", `
		SELECT MAX(odometer_km)
		FROM service_log
		WHERE device_id = ? AND service_type = ?`,
	)
	return
}

func (s *stmtLast) run(deviceId int, serviceType string) (float64, error) {
	var km sql.NullFloat64
	if err := s.Stmt.QueryRow(deviceId, serviceType).Scan(&km); err != nil {
		return 0, err
	}
	if !km.Valid {
		return 0, sql.ErrNoRows
	}
	return km.Float64, nil
}
