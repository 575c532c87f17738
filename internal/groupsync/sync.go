package groupsync

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/opsdesk/stalesweep/internal/active_directory"
	"github.com/opsdesk/stalesweep/internal/ldapclient"
	"github.com/opsdesk/stalesweep/tools"
)

const maxGroupWorkers = 5

// Result reports one group's reconciliation.
type Result struct {
	Group   string
	Members int
	Added   int
	Removed int
	Err     error
}

// Apply reconciles every group in the template against the directory.
// Groups are reconciled with bounded concurrency; within a group, mutations
// are applied sequentially and per-member errors never abort the group.
func Apply(client *ldapclient.Client, tmpl *Template, dryRun bool) []Result {
	start := time.Now()
	tools.Log.Infof("Reconciling %d templated groups...", len(tmpl.Groups))

	caser := cases.Title(language.English)
	results := make([]Result, len(tmpl.Groups))
	var mu sync.Mutex

	indexes := make([]int, len(tmpl.Groups))
	for i := range indexes {
		indexes[i] = i
	}

	tools.RunWithWorkers(indexes, maxGroupWorkers, func(i int) {
		spec := tmpl.Groups[i]
		result := reconcileGroup(client, spec, caser.String(strings.ToLower(spec.Label)), dryRun)

		mu.Lock()
		results[i] = result
		mu.Unlock()
	})

	tools.Log.Infof("Finished reconciling groups in %s", time.Since(start))
	return results
}

func reconcileGroup(client *ldapclient.Client, spec GroupSpec, label string, dryRun bool) Result {
	result := Result{Group: spec.CN}

	members, err := active_directory.SearchUsers(client, spec.Filter)
	if err != nil {
		result.Err = fmt.Errorf("member search failed: %w", err)
		return result
	}
	result.Members = len(members)

	if len(members) == 0 {
		tools.Log.WithField("group", spec.CN).Warn("No users match the filter, skipping.")
		return result
	}

	group, err := active_directory.EnsureGroupExists(client, spec.CN, spec.Email, spec.OU, label)
	if err != nil {
		result.Err = fmt.Errorf("unable to ensure group: %w", err)
		return result
	}

	if mailErr := active_directory.EnsureGroupMailAttribute(client, group.DN, spec.Email); mailErr != nil {
		tools.Log.WithError(mailErr).Warnf("Could not update mail attribute for %s", group.DN)
	}

	desired := make([]string, 0, len(members))
	for _, m := range members {
		desired = append(desired, m.DN)
	}

	toAdd, toRemove := DiffMembers(group.Members, desired)

	tools.Log.WithFields(map[string]interface{}{
		"group":  spec.CN,
		"add":    len(toAdd),
		"remove": len(toRemove),
	}).Debug("Reconciliation plan")

	if dryRun {
		for _, dn := range toAdd {
			tools.Log.Debugf("[DRY] Add %s → %s", dn, spec.CN)
		}
		for _, dn := range toRemove {
			tools.Log.Debugf("[DRY] Remove %s ← %s", dn, spec.CN)
		}
		result.Added, result.Removed = len(toAdd), len(toRemove)
		return result
	}

	for _, dn := range toAdd {
		tools.Log.Debugf("Adding %s → %s", dn, spec.CN)
		if err := active_directory.AddGroupMember(client, group.DN, dn); err != nil {
			tools.Log.WithError(err).Errorf("Failed to add %s", dn)
			continue
		}
		result.Added++
	}

	for _, dn := range toRemove {
		tools.Log.Debugf("Removing %s ← %s", dn, spec.CN)
		if err := active_directory.RemoveGroupMember(client, group.DN, dn); err != nil {
			tools.Log.WithError(err).Errorf("Failed to remove %s", dn)
			continue
		}
		result.Removed++
	}

	tools.LogGroupSummary(spec.CN, result.Members, result.Added, result.Removed)
	return result
}

// DiffMembers computes the set difference between a group's current member
// DNs and the desired set. Comparison is case-insensitive; returned DNs keep
// their original casing.
func DiffMembers(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, dn := range current {
		currentSet[active_directory.NormalizeDN(dn)] = struct{}{}
	}

	desiredSet := make(map[string]struct{}, len(desired))
	for _, dn := range desired {
		key := active_directory.NormalizeDN(dn)
		desiredSet[key] = struct{}{}
		if _, exists := currentSet[key]; !exists {
			toAdd = append(toAdd, dn)
		}
	}

	for _, dn := range current {
		if _, exists := desiredSet[active_directory.NormalizeDN(dn)]; !exists {
			toRemove = append(toRemove, dn)
		}
	}

	return toAdd, toRemove
}
