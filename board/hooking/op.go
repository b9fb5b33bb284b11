package hooking

import "github.com/xkazm04/goat/board/naming"

// A list of hook poses for the hooks to apply to.
var (
	HookPosOpStart   = &HookPos{Name: "HookPosOpStart"}
	HookPosOpSuccess = &HookPos{Name: "HookPosOpSuccess"}
	HookPosOpFailure = &HookPos{Name: "HookPosOpFailure"}
)

// NamedHookable represent something both have a name and can be hooked.
type NamedHookable interface {
	naming.Named
	Hookable
	InvokeHook(HookCtx)
}

// OpStart is data that is passed to the hook when an operation starts.
type OpStart struct {
	ID      string
	Command string
	Where   string
	Detail  string
}

// OpSuccess is data that is passed to the hook when an operation completes.
type OpSuccess struct {
	ID      string
	Command string
	Detail  string
}

// OpFailure is data that is passed to the hook when an operation fails, either
// during validation or during the mutate phase.
type OpFailure struct {
	ID           string
	Command      string
	ErrorCode    string
	ErrorMessage string
}

// StartOp notifies the hooks that hook to the domain about the start of an
// operation.
func StartOp(
	id string,
	domain NamedHookable,
	command string,
	detail string,
) {
	if domain.NumHooks() == 0 {
		return
	}

	opFieldsMustBeSet(id, domain, command)

	ctx := HookCtx{
		Domain: domain,
		Pos:    HookPosOpStart,
		Item: OpStart{
			ID:      id,
			Command: command,
			Where:   domain.Name(),
			Detail:  detail,
		},
	}
	domain.InvokeHook(ctx)
}

// SucceedOp notifies the hooks that hook to the domain about the successful
// completion of an operation.
func SucceedOp(
	id string,
	domain NamedHookable,
	command string,
	detail string,
) {
	if domain.NumHooks() == 0 {
		return
	}

	opFieldsMustBeSet(id, domain, command)

	ctx := HookCtx{
		Domain: domain,
		Pos:    HookPosOpSuccess,
		Item: OpSuccess{
			ID:      id,
			Command: command,
			Detail:  detail,
		},
	}
	domain.InvokeHook(ctx)
}

// FailOp notifies the hooks that hook to the domain that an operation failed.
func FailOp(
	id string,
	domain NamedHookable,
	command string,
	errorCode string,
	errorMessage string,
) {
	if domain.NumHooks() == 0 {
		return
	}

	opFieldsMustBeSet(id, domain, command)

	ctx := HookCtx{
		Domain: domain,
		Pos:    HookPosOpFailure,
		Item: OpFailure{
			ID:           id,
			Command:      command,
			ErrorCode:    errorCode,
			ErrorMessage: errorMessage,
		},
	}
	domain.InvokeHook(ctx)
}

func opFieldsMustBeSet(id string, domain NamedHookable, command string) {
	if id == "" {
		panic("operation id must not be empty")
	}

	if domain == nil {
		panic("domain must not be nil")
	}

	if domain.Name() == "" {
		panic("domain must have a name")
	}

	if command == "" {
		panic("command must not be empty")
	}
}
