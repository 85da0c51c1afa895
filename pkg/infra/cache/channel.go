package cache

type Channel string

const PolicyEventsChannel Channel = "trustchat:policy_events"
