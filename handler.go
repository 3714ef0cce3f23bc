package tokenswap

import (
	"encoding/json"
	"reflect"
	"regexp"

	"github.com/iov-one/tokenswap/errors"
)

// Msg is message for the ledger to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. The identity of the caller
// is carried by the Context, not by the message.
type Msg interface {
	// Return the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs only stateless checks on the message content.
	Validate() error
}

// IsValidPath matches the allowed message path format.
var IsValidPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Tx represent the data sent from the user to the ledger.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// NewTx wraps a single message into a transaction.
func NewTx(msg Msg) Tx {
	return singleMsgTx{msg: msg}
}

type singleMsgTx struct {
	msg Msg
}

func (tx singleMsgTx) GetMsg() (Msg, error) {
	if tx.msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "no message")
	}
	return tx.msg, nil
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	if tx == nil {
		return "(missing)"
	}
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}

	// Destination must be a pointer to the same type as the message.
	msgVal := reflect.ValueOf(msg)
	dstVal := reflect.ValueOf(destination)
	if dstVal.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrHuman, "destination must be a pointer")
	}
	if msgVal.Kind() == reflect.Ptr {
		msgVal = msgVal.Elem()
	}
	if !msgVal.Type().AssignableTo(dstVal.Elem().Type()) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be loaded into %T", msg, destination)
	}
	dstVal.Elem().Set(msgVal)

	if m, ok := destination.(Msg); ok {
		if err := m.Validate(); err != nil {
			return errors.Wrap(err, "invalid message")
		}
	}
	return nil
}

// Handler is a core engine that can process a few specific messages
// This could represent "token transfer", or "approve a swap request"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like logging, or savepoints, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(m Msg, h Handler)
}

// CheckResult captures any non-error result of a dry run.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
}

// DeliverResult captures any non-error result of a committed call.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Events are released to observers only once the call is committed.
	Events []Event
}

// Options are the genesis options.
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "options %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(ctx Context, opts Options, db KVStore) error
}
