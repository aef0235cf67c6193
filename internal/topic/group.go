package topic

// TopicGroup collects the commits of one topic in the order they were
// discovered (newest first) together with the union of their declared
// dependencies. Groups live for a single run.
type TopicGroup struct {
	// Tag is the topic identity, spelled as first encountered.
	Tag Tag

	commits []*CommitRecord // newest first, as scanned
	deps    []Tag           // union over members, first spelling kept
}

// add appends a commit discovered during the scan and folds its declared
// dependencies into the aggregate set.
func (g *TopicGroup) add(record *CommitRecord) {
	g.commits = append(g.commits, record)
	for _, dep := range record.Dependencies() {
		if !containsTag(g.deps, dep) {
			g.deps = append(g.deps, dep)
		}
	}
}

// Commits returns the member commits newest first.
func (g *TopicGroup) Commits() []*CommitRecord {
	return g.commits
}

// Newest returns the most recent member commit.
func (g *TopicGroup) Newest() *CommitRecord {
	return g.commits[0]
}

// Replay returns the member commits oldest first, the order cherry-pick
// needs so every parent lands before its child.
func (g *TopicGroup) Replay() []*CommitRecord {
	replay := make([]*CommitRecord, len(g.commits))
	for i, record := range g.commits {
		replay[len(g.commits)-1-i] = record
	}
	return replay
}

// AggregateDependencies returns the union of the members' dependency tags in
// first-encounter order.
func (g *TopicGroup) AggregateDependencies() []Tag {
	return g.deps
}

// HasDependencies reports whether any member declared a dependency.
func (g *TopicGroup) HasDependencies() bool {
	return len(g.deps) > 0
}

func containsTag(tags []Tag, tag Tag) bool {
	for _, candidate := range tags {
		if candidate.Equal(tag) {
			return true
		}
	}
	return false
}

// GroupByTopic folds a newest-first commit sequence into per-tag groups.
// Untagged commits are skipped; tags differing only in case share a group.
// Groups come back in first-encounter order. An empty input yields no groups,
// which is the normal state of a branch fully merged upstream.
func GroupByTopic(records []*CommitRecord) []*TopicGroup {
	var groups []*TopicGroup
	byKey := make(map[string]*TopicGroup)

	for _, record := range records {
		if !record.HasTag() {
			continue
		}
		key := record.Tag().Key()
		group, ok := byKey[key]
		if !ok {
			group = &TopicGroup{Tag: record.Tag()}
			byKey[key] = group
			groups = append(groups, group)
		}
		group.add(record)
	}
	return groups
}

// FilterIndependent splits groups into those eligible for automated push and
// those held back because they declare dependencies. Cross-topic ordering is
// not automated; dependent topics are surfaced to the operator instead of
// being pushed in an order that could break them.
func FilterIndependent(groups []*TopicGroup) (independent, dependent []*TopicGroup) {
	for _, group := range groups {
		if group.HasDependencies() {
			dependent = append(dependent, group)
		} else {
			independent = append(independent, group)
		}
	}
	return independent, dependent
}
