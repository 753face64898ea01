package qbank

// Tree navigation over a loaded subject document. The strict lookups fail
// with level-distinct NotFound errors; the FindOrCreate variants append an
// empty node on miss and are used only by generation paths.

// FindTopic returns the topic with the given name.
func (s *Subject) FindTopic(name string) (*Topic, error) {
	for i := range s.Topics {
		if s.Topics[i].Name == name {
			return &s.Topics[i], nil
		}
	}
	return nil, ErrTopicNotFound
}

// FindTopicByID returns the topic with the given id.
func (s *Subject) FindTopicByID(id string) (*Topic, error) {
	for i := range s.Topics {
		if s.Topics[i].ID == id {
			return &s.Topics[i], nil
		}
	}
	return nil, ErrTopicNotFound
}

// FindUnit resolves topicName/unitName within the subject.
func (s *Subject) FindUnit(topicName, unitName string) (*Unit, error) {
	topic, err := s.FindTopic(topicName)
	if err != nil {
		return nil, err
	}
	return topic.FindUnit(unitName)
}

// FindOrCreateTopic returns the named topic, creating an empty one if absent.
func (s *Subject) FindOrCreateTopic(name string) *Topic {
	if topic, err := s.FindTopic(name); err == nil {
		return topic
	}
	s.Topics = append(s.Topics, Topic{ID: NewID(), Name: name, Units: []Unit{}})
	return &s.Topics[len(s.Topics)-1]
}

// FindUnit returns the unit with the given name.
func (t *Topic) FindUnit(name string) (*Unit, error) {
	for i := range t.Units {
		if t.Units[i].Name == name {
			return &t.Units[i], nil
		}
	}
	return nil, ErrUnitNotFound
}

// FindOrCreateUnit returns the named unit, creating one if absent. A new
// unit starts with the supplied reading material (may be empty) and no
// outcomes or questions.
func (t *Topic) FindOrCreateUnit(name, readingMaterial string) *Unit {
	if unit, err := t.FindUnit(name); err == nil {
		return unit
	}
	t.Units = append(t.Units, Unit{
		Name:             name,
		ReadingMaterial:  readingMaterial,
		LearningOutcomes: []string{},
		MCQs:             []MCQ{},
	})
	return &t.Units[len(t.Units)-1]
}

// FindMCQ returns the index of the question with the given id, or
// ErrMCQNotFound.
func (u *Unit) FindMCQ(questionID string) (int, error) {
	for i := range u.MCQs {
		if u.MCQs[i].QuestionID == questionID {
			return i, nil
		}
	}
	return -1, ErrMCQNotFound
}

// MergeOutcomes unions the given outcomes into the unit's learning outcome
// set, preserving existing order and deduplicating.
func (u *Unit) MergeOutcomes(outcomes []string) {
	seen := make(map[string]bool, len(u.LearningOutcomes))
	for _, lo := range u.LearningOutcomes {
		seen[lo] = true
	}
	for _, lo := range outcomes {
		if !seen[lo] {
			u.LearningOutcomes = append(u.LearningOutcomes, lo)
			seen[lo] = true
		}
	}
}
