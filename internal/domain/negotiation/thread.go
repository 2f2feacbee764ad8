// Package negotiation восстанавливает ветки торга по плоскому набору откликов
// и определяет, на какой отклик участник может ответить.
package negotiation

import (
	"iter"
	"sort"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

// Thread - ветка торга от корня до последнего отклика.
type Thread []*entity.Response

func (t Thread) Root() *entity.Response {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

func (t Thread) Tip() *entity.Response {
	if len(t) == 0 {
		return nil
	}
	return t[len(t)-1]
}

// HasParticipant сообщает, писал ли пользователь в эту ветку.
func (t Thread) HasParticipant(userID uuid.UUID) bool {
	for _, r := range t {
		if r.RespondentID == userID {
			return true
		}
	}
	return false
}

type chain struct {
	roots []*entity.Response
	next  map[uuid.UUID]*entity.Response
	limit int
}

func buildChain(responses []*entity.Response) chain {
	c := chain{
		next:  make(map[uuid.UUID]*entity.Response, len(responses)),
		limit: len(responses),
	}
	for _, r := range responses {
		if r.PrevResponseID == nil {
			c.roots = append(c.roots, r)
			continue
		}
		// У отклика не больше одного продолжения. При повреждённых данных берём самое раннее.
		if cur, ok := c.next[*r.PrevResponseID]; !ok || r.CreatedAt.Before(cur.CreatedAt) {
			c.next[*r.PrevResponseID] = r
		}
	}
	sort.SliceStable(c.roots, func(i, j int) bool {
		return c.roots[i].CreatedAt.Before(c.roots[j].CreatedAt)
	})
	return c
}

func (c chain) walk(root *entity.Response) Thread {
	thread := Thread{root}
	visited := map[uuid.UUID]struct{}{root.ID: {}}
	cur := root
	for len(thread) < c.limit {
		succ, ok := c.next[cur.ID]
		if !ok {
			break
		}
		if _, seen := visited[succ.ID]; seen {
			break
		}
		visited[succ.ID] = struct{}{}
		thread = append(thread, succ)
		cur = succ
	}
	return thread
}

// Threads возвращает ленивую последовательность веток поста, корни по времени создания.
// Последовательность можно обходить повторно.
func Threads(responses []*entity.Response) iter.Seq[Thread] {
	return func(yield func(Thread) bool) {
		c := buildChain(responses)
		for _, root := range c.roots {
			if !yield(c.walk(root)) {
				return
			}
		}
	}
}

// ThreadsWith оставляет только ветки, где пользователь хотя бы раз отвечал.
func ThreadsWith(responses []*entity.Response, userID uuid.UUID) iter.Seq[Thread] {
	return func(yield func(Thread) bool) {
		for t := range Threads(responses) {
			if t.HasParticipant(userID) && !yield(t) {
				return
			}
		}
	}
}

// ThreadOf возвращает ветку, в которой лежит отклик с данным id.
func ThreadOf(responses []*entity.Response, responseID uuid.UUID) (Thread, bool) {
	for t := range Threads(responses) {
		for _, r := range t {
			if r.ID == responseID {
				return t, true
			}
		}
	}
	return nil, false
}

// Collect собирает последовательность в срез.
func Collect(seq iter.Seq[Thread]) []Thread {
	var out []Thread
	for t := range seq {
		out = append(out, t)
	}
	return out
}
