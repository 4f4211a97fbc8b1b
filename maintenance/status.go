// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

// Package maintenance projects remaining service margin per device and rule.
// The upstream server has no authoritative service history, so the last
// service odometer comes from a pluggable ServiceHistoryProvider; the
// threshold classification never depends on which provider is wired.
package maintenance

import (
	"strings"

	"github.com/acertaexpress/fleetwatch/context"
	"github.com/acertaexpress/fleetwatch/model"
)

// Severity thresholds in remaining km. remaining == WarningBelow classifies
// good, remaining == CriticalBelow classifies warning: the bands are
// half-open on the low side. These values are a compatibility contract with
// historical output.
const (
	CriticalBelow = 500.0
	WarningBelow  = 1000.0
)

// metersPerKm converts the raw totalDistance attribute (meters) to km.
const metersPerKm = 1000.0

// ServiceHistoryProvider resolves the odometer reading at the last completed
// service of a given type. Implementations: AttributeHistory (device attribute
// bag), servicelog.Storage (sqlite), RedisHistory (shared marker store).
type ServiceHistoryProvider interface {
	LastService(ctx context.Context, device model.Device, rule model.Maintenance) (float64, error)
}

// AttributeHistory reads the per-service marker from the device attribute bag
// (e.g. lastServiceOil for an "oil" rule), defaulting to 0 when absent. This
// is the stand-in policy used until a real service-history source exists.
type AttributeHistory struct{}

func (AttributeHistory) LastService(_ context.Context, device model.Device, rule model.Maintenance) (float64, error) {
	return device.Attr(markerAttr(rule.Type), 0), nil
}

func markerAttr(serviceType string) string {
	if serviceType == "" {
		return "lastService"
	}
	return "lastService" + strings.ToUpper(serviceType[:1]) + serviceType[1:]
}

// DefaultRules is the fallback schedule applied when the upstream server
// defines no maintenance rules.
func DefaultRules() []model.Maintenance {
	return []model.Maintenance{
		{Name: "Oil Change", Type: "oil", Period: 10000},
	}
}

// Status projects one MaintenanceStatus per rule for the device. Pure except
// for the history lookup; a provider error aborts the device so the caller
// can keep the previous projection.
func Status(ctx context.Context, device model.Device, rules []model.Maintenance, history ServiceHistoryProvider) ([]model.MaintenanceStatus, error) {
	if history == nil {
		history = AttributeHistory{}
	}
	odometerKm := device.Attr(model.AttrTotalDistance, 0) / metersPerKm

	statuses := make([]model.MaintenanceStatus, 0, len(rules))
	for _, rule := range rules {
		last, err := history.LastService(ctx, device, rule)
		if err != nil {
			return nil, err
		}
		next := last + rule.Period
		remaining := next - odometerKm
		statuses = append(statuses, model.MaintenanceStatus{
			MaintenanceId: rule.Id,
			DeviceId:      device.Id,
			Name:          rule.Name,
			Type:          rule.Type,
			Status:        Classify(remaining),
			OdometerKm:    odometerKm,
			LastService:   last,
			NextService:   next,
			Remaining:     remaining,
		})
	}
	return statuses, nil
}

// Classify maps remaining km to a severity tier.
func Classify(remaining float64) model.Severity {
	switch {
	case remaining < CriticalBelow:
		return model.SeverityCritical
	case remaining < WarningBelow:
		return model.SeverityWarning
	default:
		return model.SeverityGood
	}
}

// FleetStatus projects every device against the same rule set, in roster
// order. Devices that fail the history lookup are skipped, not fatal: the
// projection is a best-effort dashboard, and one bad record must not blank
// the whole fleet.
func FleetStatus(ctx context.Context, devices []model.Device, rules []model.Maintenance, history ServiceHistoryProvider) []model.MaintenanceStatus {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	log := context.CtxGetLog(ctx)
	var out []model.MaintenanceStatus
	for _, d := range devices {
		statuses, err := Status(ctx, d, rules, history)
		if err != nil {
			log.Error("failed to project maintenance status", "device", d.Id, "error", err)
			continue
		}
		out = append(out, statuses...)
	}
	return out
}
