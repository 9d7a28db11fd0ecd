package taskpad

// Test utilities - shared helpers for tests in this and other packages

// RecordingPresenter captures everything an App hands to its presenter
type RecordingPresenter struct {
	Views     []View
	Notices   []Notice
	Artifacts []Artifact
	// DeliverErr is returned from Deliver when set
	DeliverErr error
}

func (p *RecordingPresenter) Render(view View) {
	p.Views = append(p.Views, view)
}

func (p *RecordingPresenter) Notify(notice Notice) {
	p.Notices = append(p.Notices, notice)
}

func (p *RecordingPresenter) Deliver(artifact Artifact) error {
	if p.DeliverErr != nil {
		return p.DeliverErr
	}
	p.Artifacts = append(p.Artifacts, artifact)
	return nil
}

// LastView returns the most recent rendered view
func (p *RecordingPresenter) LastView() View {
	if len(p.Views) == 0 {
		return View{}
	}
	return p.Views[len(p.Views)-1]
}

// Messages returns the notice texts in order
func (p *RecordingPresenter) Messages() []string {
	out := make([]string, len(p.Notices))
	for i, n := range p.Notices {
		out[i] = n.Message
	}
	return out
}
