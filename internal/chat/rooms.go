package chat

import (
	"sort"
	"strings"
)

// loginRoom is a private room for a single freshly-connected session. It
// exists from accept until login succeeds.
type loginRoom struct {
	baseRoom
}

func newLoginRoom(reg *Registry) *loginRoom {
	r := &loginRoom{baseRoom: newBaseRoom(reg)}
	r.handlers["login"] = r.doLogin
	r.unknown = func(s *Session, verb string) Outcome {
		sendLine(s, "Please log in")
		sendLine(s, `Use "login <nick>"`)
		return Continue
	}
	return r
}

func (r *loginRoom) Add(s *Session) {
	r.baseRoom.Add(s)
	r.Broadcast("Welcome to " + r.reg.serverName)
}

func (r *loginRoom) doLogin(s *Session, arg string) Outcome {
	name := strings.TrimSpace(arg)
	switch r.reg.checkName(name) {
	case ErrNameEmpty:
		sendLine(s, "Please enter a name")
	case ErrNameTaken:
		sendLine(s, `The name "`+name+`" is taken.`)
		sendLine(s, "Please try again.")
	default:
		s.Name = name
		r.reg.moveTo(s, r.reg.mainRoom)
	}
	return Continue
}

// chatRoom is the single shared room every logged-in session occupies.
type chatRoom struct {
	baseRoom
}

func newChatRoom(reg *Registry) *chatRoom {
	r := &chatRoom{baseRoom: newBaseRoom(reg)}
	r.handlers["say"] = r.doSay
	r.handlers["look"] = r.doLook
	r.handlers["who"] = r.doWho
	return r
}

// Add announces the newcomer before the name lands in the directory. The
// newcomer is already a member at broadcast time, so it receives its own
// entry announcement.
func (r *chatRoom) Add(s *Session) {
	r.baseRoom.Add(s)
	r.Broadcast(s.Name + " has entered the room.")
	r.reg.users[s.Name] = s
}

func (r *chatRoom) Remove(s *Session) {
	r.baseRoom.Remove(s)
	r.Broadcast(s.Name + " has left the room.")
}

func (r *chatRoom) doSay(s *Session, arg string) Outcome {
	r.Broadcast(s.Name + ": " + arg)
	return Continue
}

func (r *chatRoom) doLook(s *Session, arg string) Outcome {
	sendLine(s, "The following are in this room:")
	for _, m := range r.members {
		sendLine(s, m.Name)
	}
	return Continue
}

func (r *chatRoom) doWho(s *Session, arg string) Outcome {
	sendLine(s, "The following are logged in:")
	names := make([]string, 0, len(r.reg.users))
	for name := range r.reg.users {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sendLine(s, name)
	}
	return Continue
}

// logoutRoom is the dead-end a session is moved into while being torn down.
// Its only job is to release the session's name.
type logoutRoom struct {
	baseRoom
}

func newLogoutRoom(reg *Registry) *logoutRoom {
	return &logoutRoom{baseRoom: newBaseRoom(reg)}
}

// Add deregisters the name instead of tracking membership. The name may
// already be gone when logout races disconnect cleanup; deleting an absent
// key is a no-op either way.
func (r *logoutRoom) Add(s *Session) {
	delete(r.reg.users, s.Name)
}
