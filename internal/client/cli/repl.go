package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, args []string) error
	Where(ctx context.Context) error

	Overview(ctx context.Context) error
	Pending(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Teachers(ctx context.Context, args []string) error
	ResetPassword(ctx context.Context, args []string) error
	Classes(ctx context.Context) error
	Students(ctx context.Context, args []string) error
	Subjects(ctx context.Context) error
	Exams(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Rollback(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Certificate(ctx context.Context, args []string) error

	Courses(ctx context.Context) error
	Scores(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: login, register, go <path>, where, exit"
	helpLoggedIn  = "Available commands: whoami, passwd, logout, go <path>, where, exit\n" +
		"  admin:   overview, pending, approve <id>, reject <id>, teachers [keyword], resetpw <teacherId>,\n" +
		"           classes, students [classId], subjects, exams, history [page], rollback <batchId>,\n" +
		"           export <students|teachers|assignments> <file>, import <students|teachers|assignments> <file> [academicYear],\n" +
		"           import scores <file> <entryYear> <examName> <subjectIds> [classIds], certificate <studentId> <file>\n" +
		"  teacher: courses, scores <classId> <examTaskId>, export scores <file> <classId> <examTaskId>,\n" +
		"           import scores <file> <classId> <examTaskId>"
)

// runREPL starts a simple read-eval-print loop for the gradebook CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when the user types "exit" or "quit", or
// when ctx is cancelled.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gb %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "passwd":
			_ = a.ChangePassword(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "go":
			_ = a.Go(ctx, args)
		case "where":
			_ = a.Where(ctx)

		case "overview":
			_ = a.Overview(ctx)
		case "pending":
			_ = a.Pending(ctx)
		case "approve":
			_ = a.Approve(ctx, args)
		case "reject":
			_ = a.Reject(ctx, args)
		case "teachers":
			_ = a.Teachers(ctx, args)
		case "resetpw":
			_ = a.ResetPassword(ctx, args)
		case "classes":
			_ = a.Classes(ctx)
		case "students":
			_ = a.Students(ctx, args)
		case "subjects":
			_ = a.Subjects(ctx)
		case "exams":
			_ = a.Exams(ctx)
		case "history":
			_ = a.History(ctx, args)
		case "rollback":
			_ = a.Rollback(ctx, args)
		case "export":
			_ = a.Export(ctx, args)
		case "import":
			_ = a.Import(ctx, args)
		case "certificate":
			_ = a.Certificate(ctx, args)

		case "courses":
			_ = a.Courses(ctx)
		case "scores":
			_ = a.Scores(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
