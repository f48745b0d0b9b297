// Package cron runs named, replaceable cron jobs.
package cron

import (
	"sync"

	"github.com/robfig/cron/v3"
)

// FuncJob is an alias of `cron.FuncJob`.
type FuncJob = cron.FuncJob

// Cron wraps `cron.Cron` with job names so a schedule can be replaced or
// removed by name.
type Cron struct {
	inner *cron.Cron

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

// New returns a started Cron.
func New() *Cron {
	c := cron.New()
	c.Start()
	return &Cron{
		inner: c,
		jobs:  make(map[string]cron.EntryID),
	}
}

// AddJob removes any job with the same name first, then schedules cmd.
func (c *Cron) AddJob(name, spec string, cmd FuncJob) error {
	c.RemoveJob(name)
	id, err := c.inner.AddFunc(spec, cmd)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.jobs[name] = id
	c.mu.Unlock()
	return nil
}

// RemoveJob removes the job with the given name, if any.
func (c *Cron) RemoveJob(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.jobs[name]; ok {
		c.inner.Remove(id)
		delete(c.jobs, name)
	}
}

// HasJob reports whether a job with the given name is scheduled.
func (c *Cron) HasJob(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.jobs[name]
	return ok
}

// Jobs returns the scheduled entries keyed by job name.
func (c *Cron) Jobs() map[string]cron.Entry {
	c.mu.Lock()
	id2name := make(map[cron.EntryID]string, len(c.jobs))
	for name, id := range c.jobs {
		id2name[id] = name
	}
	c.mu.Unlock()

	ret := map[string]cron.Entry{}
	for _, entry := range c.inner.Entries() {
		if name, ok := id2name[entry.ID]; ok {
			ret[name] = entry
		}
	}
	return ret
}

// Stop stops scheduling new runs. Running jobs are not interrupted.
func (c *Cron) Stop() {
	c.inner.Stop()
}
