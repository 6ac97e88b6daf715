package quiz

// GraphEngine walks a Scenario by following the nextId of each chosen
// option. It does not check that a chosen id belongs to the current node's
// options; authored content is validated when it is loaded.
type GraphEngine struct {
	scenario *Scenario
}

func NewGraphEngine(sc *Scenario) *GraphEngine {
	return &GraphEngine{scenario: sc}
}

func (e *GraphEngine) Mode() Mode { return ModeGraph }

func (e *GraphEngine) Scenario() *Scenario { return e.scenario }

func (e *GraphEngine) NewSession(id string) *Session {
	s := &Session{ID: id, Mode: ModeGraph}
	s.touch()
	return s
}

func (e *GraphEngine) Start(s *Session) error {
	if err := checkMode(e, s); err != nil {
		return err
	}
	if _, ok := e.scenario.Nodes[e.scenario.StartNodeID]; !ok {
		return ErrStartNodeMissing
	}
	s.NodeID = e.scenario.StartNodeID
	s.Path = nil
	s.touch()
	return nil
}

func (e *GraphEngine) Select(s *Session, c Choice) error {
	if err := checkMode(e, s); err != nil {
		return err
	}
	if e.View(s).Kind != ViewQuestion {
		return ErrNotInProgress
	}
	s.NodeID = c.NextID
	s.Path = append(s.Path, c.NextID)
	s.touch()
	return nil
}

func (e *GraphEngine) View(s *Session) View {
	if s.NodeID == "" {
		return View{Kind: ViewNotStarted}
	}
	node, ok := e.scenario.Nodes[s.NodeID]
	if !ok {
		return View{Kind: ViewNotFound, NodeID: s.NodeID}
	}
	switch node.Type {
	case NodeQuestion:
		return View{Kind: ViewQuestion, Node: node, NodeID: node.ID}
	case NodeResult:
		return View{Kind: ViewResult, Node: node, NodeID: node.ID}
	}
	// Unknown types are rejected at load; treat a hand-built one as missing.
	return View{Kind: ViewNotFound, NodeID: s.NodeID}
}

func (e *GraphEngine) Restart(s *Session) {
	s.NodeID = ""
	s.Path = nil
	s.touch()
}

func (e *GraphEngine) History(s *Session) []Choice {
	out := make([]Choice, len(s.Path))
	for i, id := range s.Path {
		out[i] = Choice{NextID: id}
	}
	return out
}
