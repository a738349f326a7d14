package registry

// Notification is an observable side effect of a committed operation.
// Notifications are appended to the collection journal in commit order;
// failed operations never append anything.
type Notification interface {
	// Kind returns the notification type name.
	Kind() string
}

// Notification kind names.
const (
	KindTransfer       = "Transfer"
	KindApproval       = "Approval"
	KindApprovalForAll = "ApprovalForAll"
	KindMintingPaused  = "MintingPaused"
)

// TransferNote signals a change of ownership.
// A zero From means the token was minted; a zero To means it was burned.
type TransferNote struct {
	From  Address `json:"from"`
	To    Address `json:"to"`
	Token TokenID `json:"token"`
}

// Kind returns "Transfer".
func (TransferNote) Kind() string { return KindTransfer }

// ApprovalNote signals a single-token approval change.
// A zero Approved clears the approval.
type ApprovalNote struct {
	Owner    Address `json:"owner"`
	Approved Address `json:"approved"`
	Token    TokenID `json:"token"`
}

// Kind returns "Approval".
func (ApprovalNote) Kind() string { return KindApproval }

// OperatorNote signals a blanket operator approval change.
type OperatorNote struct {
	Owner    Address `json:"owner"`
	Operator Address `json:"operator"`
	Approved bool    `json:"approved"`
}

// Kind returns "ApprovalForAll".
func (OperatorNote) Kind() string { return KindApprovalForAll }

// PauseNote signals that minting was paused or resumed.
type PauseNote struct {
	Paused bool `json:"paused"`
}

// Kind returns "MintingPaused".
func (PauseNote) Kind() string { return KindMintingPaused }

// Entry is a journaled notification with its commit sequence number.
type Entry struct {
	Seq  uint64
	Note Notification
}

// Journal is the append-only, ordered record of committed notifications.
type Journal struct {
	entries []Entry
	seq     uint64
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Append records notifications in order, assigning sequence numbers.
func (j *Journal) Append(notes ...Notification) {
	for _, n := range notes {
		j.entries = append(j.entries, Entry{Seq: j.seq, Note: n})
		j.seq++
	}
}

// Entries returns a copy of all journaled entries in commit order.
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of journaled entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Since returns entries with sequence >= seq.
func (j *Journal) Since(seq uint64) []Entry {
	var out []Entry
	for _, e := range j.entries {
		if e.Seq >= seq {
			out = append(out, e)
		}
	}
	return out
}
